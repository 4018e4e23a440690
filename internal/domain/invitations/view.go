package invitations

import "time"

// View es la proyección que ven la UI y el cliente cuando hay conflicto de agenda.
type View struct {
	ID             string          `json:"id"`
	Date           string          `json:"date"`
	Time           string          `json:"time"`
	Title          string          `json:"title"`
	Convener       string          `json:"convener"`
	Status         Status          `json:"status"`
	Assignee       string          `json:"assignee"`
	Role           string          `json:"role"`
	Notes          string          `json:"notes"`
	Attachment     *AttachmentView `json:"attachment"`
	DaysUntilEvent *int            `json:"days_until_event"`
}

type AttachmentView struct {
	URL        string     `json:"url"`
	Name       string     `json:"name"`
	MIME       string     `json:"mime"`
	Size       int64      `json:"size"`
	UploadedAt *time.Time `json:"uploaded_at"`
}

func ToView(inv Invitation, today time.Time) View {
	v := View{
		ID:       inv.ID,
		Date:     FormatDate(inv.Date),
		Time:     FormatClock(inv.Time),
		Title:    inv.Title,
		Convener: inv.Convener,
		Status:   inv.Status,
		Assignee: inv.AssigneeName,
		Role:     inv.Role,
		Notes:    inv.Notes,
	}
	if !inv.Attachment.Empty() {
		v.Attachment = &AttachmentView{
			URL:        inv.Attachment.URL,
			Name:       inv.Attachment.Name,
			MIME:       inv.Attachment.MIME,
			Size:       inv.Attachment.Size,
			UploadedAt: inv.Attachment.UploadedAt,
		}
	}
	if inv.Date != nil {
		d := DaysBetween(today, *inv.Date)
		v.DaysUntilEvent = &d
	}
	return v
}

// DaysBetween cuenta días de calendario de from a to, ignorando la hora.
func DaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
