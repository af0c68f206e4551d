package state

import (
	"fmt"
	"testing"
)

func BenchmarkFileTracker_Record(b *testing.B) {
	tracker, err := OpenFileTracker(b.TempDir())
	if err != nil {
		b.Fatal(err)
	}
	defer tracker.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := tracker.Record(Entry{Hash: fmt.Sprintf("hash-%d", i), Subject: "subject"}); err != nil {
			b.Fatal(err)
		}
	}
	b.StopTimer()

	if err := tracker.Close(); err != nil {
		b.Fatal(err)
	}
}

func BenchmarkFileTracker_Seen(b *testing.B) {
	tracker, err := OpenFileTracker(b.TempDir())
	if err != nil {
		b.Fatal(err)
	}
	defer tracker.Close()

	for i := 0; i < 10000; i++ {
		if err := tracker.Record(Entry{Hash: fmt.Sprintf("hash-%d", i)}); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tracker.Seen(fmt.Sprintf("hash-%d", i%10000))
	}
}

func BenchmarkHash(b *testing.B) {
	raw := make([]byte, 16*1024)
	b.SetBytes(int64(len(raw)))
	for i := 0; i < b.N; i++ {
		Hash(raw)
	}
}
