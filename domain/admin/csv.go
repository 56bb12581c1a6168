package admin

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/schoolpilot/waitlist-api/domain/notifications"
	"github.com/schoolpilot/waitlist-api/domain/waitlist"
)

const exportFilenamePrefix = "schoolpilot"

// ExportFilename builds "<prefix>_<context>_<date>.csv".
func ExportFilename(context string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s.csv", exportFilenamePrefix, context, now.Format("2006-01-02"))
}

func WriteWaitlistCSV(w io.Writer, entries []waitlist.WaitlistEntryResponse) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"School Name", "Email", "Discount", "Date"}); err != nil {
		return err
	}

	for _, entry := range entries {
		record := []string{
			entry.SchoolName,
			entry.Email,
			fmt.Sprintf("%d%%", entry.Discount),
			entry.CreatedAt,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func WriteSubscribersCSV(w io.Writer, subscribers []notifications.SubscriberResponse) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"Email", "Date"}); err != nil {
		return err
	}

	for _, subscriber := range subscribers {
		if err := writer.Write([]string{subscriber.Email, subscriber.CreatedAt}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
