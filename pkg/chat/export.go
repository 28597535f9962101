package chat

import (
	"bytes"
	"encoding/csv"
	"time"
)

// timestampLayout is the wall-clock format used in exported log rows.
const timestampLayout = "2006-01-02 15:04:05"

// ExportCSV renders the audit log as delimited text with a fixed header
// row of Timestamp, Role, Content, Model.
func (l AuditLog) ExportCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Timestamp", "Role", "Content", "Model"}); err != nil {
		return nil, err
	}
	for _, entry := range l {
		row := []string{
			entry.Timestamp.Format(timestampLayout),
			string(entry.Role),
			entry.Content,
			entry.Model,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportFilename encodes the generation time into the download name.
func ExportFilename(now time.Time) string {
	return "chat_log_" + now.Format("20060102_150405") + ".csv"
}
