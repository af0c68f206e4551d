package extract

import (
	"strings"
	"testing"

	"github.com/dayv-exe/PhishingEmailDetector/model"
)

// BenchmarkBuild benchmarks building a record from a typical phishing dump
func BenchmarkBuild(b *testing.B) {
	row := model.InputRow{
		Subject: "Account suspended",
		Content: "From: security@paypa1.example\nTo: victim@example.com\nDate: 03/04/2020\n" +
			strings.Repeat("Please verify your account at http://paypa1.example/login?id=42 today.\n", 20),
		Label: "1",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Build(row, Options{})
	}
}

// BenchmarkCollectURLs benchmarks URL extraction on a long body
func BenchmarkCollectURLs(b *testing.B) {
	text := strings.Repeat("see https://a.example/x?y=%20z and more words here ", 200)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		CollectURLs(text)
	}
}
