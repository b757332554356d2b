// Package transcript loads call transcript files and parses the metadata
// header block that precedes the transcript body.
//
// The expected format is a block of "KEY: value" lines terminated by a
// line beginning with "---", followed by the transcript text:
//
//	CSM: Dana Alvarez
//	ACCOUNT: Acme Financial
//	ARR: $84,000
//	CALL DATE: June 2, 2026
//	TRANSCRIPT ID: TXN-20260602-0417
//	---
//	<transcript body>
package transcript

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/otherjamesbrown/callsight-cli/pkg/insight"
)

// Header keys recognized in the metadata block.
const (
	keyCSM          = "CSM"
	keyAccount      = "ACCOUNT"
	keyARR          = "ARR"
	keyRenewalDate  = "RENEWAL DATE"
	keyCallDate     = "CALL DATE"
	keyDuration     = "DURATION"
	keyTranscriptID = "TRANSCRIPT ID"
)

// Load reads a transcript file and parses it.
func Load(path string) (string, insight.CallMetadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", insight.CallMetadata{}, fmt.Errorf("read transcript: %w", err)
	}
	body, meta := Parse(string(content))
	return body, meta, nil
}

// Parse splits raw transcript content into the body text and the call
// metadata. Unknown header keys are ignored; missing keys get the same
// defaults the CSM tooling has always used, so a bare transcript with no
// header still produces a usable metadata record.
func Parse(content string) (string, insight.CallMetadata) {
	lines := strings.Split(content, "\n")

	header := map[string]string{}
	bodyStart := 0
	for i, line := range lines {
		if strings.HasPrefix(line, "---") {
			bodyStart = i + 1
			break
		}
		if key, value, ok := strings.Cut(line, ":"); ok {
			header[strings.ToUpper(strings.TrimSpace(key))] = strings.TrimSpace(value)
		}
	}

	body := strings.TrimSpace(strings.Join(lines[bodyStart:], "\n"))

	meta := insight.CallMetadata{
		CSMName:      headerOr(header, keyCSM, "Unknown CSM"),
		AccountName:  headerOr(header, keyAccount, "Unknown Account"),
		AccountARR:   headerOptional(header, keyARR),
		RenewalDate:  headerOptional(header, keyRenewalDate),
		CallDate:     headerOr(header, keyCallDate, time.Now().Format("January 2, 2006")),
		CallDuration: headerOptional(header, keyDuration),
		TranscriptID: headerOr(header, keyTranscriptID, defaultTranscriptID()),
	}
	return body, meta
}

func headerOr(header map[string]string, key, fallback string) string {
	if v, ok := header[key]; ok && v != "" {
		return v
	}
	return fallback
}

func headerOptional(header map[string]string, key string) *string {
	if v, ok := header[key]; ok && v != "" {
		return &v
	}
	return nil
}

func defaultTranscriptID() string {
	return "TXN-" + time.Now().Format("20060102") + "-UNKNOWN"
}
