package model

// InputRow is one row of the source dataset: a raw email dump with its subject and label.
type InputRow struct {
	Line    int
	Subject string
	Content string
	Label   string
}
