package extract

import "github.com/dayv-exe/PhishingEmailDetector/model"

// Build turns one input row into its structured record. It never fails:
// anything that cannot be extracted is left blank.
func Build(row model.InputRow, opts Options) model.EmailRecord {
	content := ParseContent(row.Content, opts)
	urls := CollectURLs(row.Content)

	return model.EmailRecord{
		Date:         ParseDate(content.Date),
		URLs:         urls,
		URLCount:     len(urls),
		SenderDomain: SenderDomain(content.Sender),
		Sender:       content.Sender,
		Title:        row.Subject,
		Body:         content.Body,
		Label:        row.Label,
	}
}
