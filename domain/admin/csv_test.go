package admin

import (
	"bytes"
	"testing"
	"time"

	"github.com/schoolpilot/waitlist-api/domain/notifications"
	"github.com/schoolpilot/waitlist-api/domain/waitlist"
	"github.com/stretchr/testify/assert"
)

func TestExportFilename(t *testing.T) {
	now := time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "schoolpilot_waitlist_2025-03-14.csv", ExportFilename("waitlist", now))
	assert.Equal(t, "schoolpilot_subscribers_2025-03-14.csv", ExportFilename("subscribers", now))
}

func TestWriteWaitlistCSV(t *testing.T) {
	var buf bytes.Buffer

	err := WriteWaitlistCSV(&buf, []waitlist.WaitlistEntryResponse{
		{SchoolName: "Springfield Elementary", Email: "a@b.com", Discount: 50, CreatedAt: "2025-03-14T10:00:00Z"},
	})

	assert.NoError(t, err)
	assert.Equal(t,
		"School Name,Email,Discount,Date\n"+
			"Springfield Elementary,a@b.com,50%,2025-03-14T10:00:00Z\n",
		buf.String())
}

func TestWriteSubscribersCSV(t *testing.T) {
	var buf bytes.Buffer

	err := WriteSubscribersCSV(&buf, []notifications.SubscriberResponse{
		{Email: "a@b.com", CreatedAt: "2025-03-14T10:00:00Z"},
		{Email: "c@d.com", CreatedAt: "2025-03-15T10:00:00Z"},
	})

	assert.NoError(t, err)
	assert.Equal(t,
		"Email,Date\n"+
			"a@b.com,2025-03-14T10:00:00Z\n"+
			"c@d.com,2025-03-15T10:00:00Z\n",
		buf.String())
}
