package jobs

import (
	"bytes"
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var mailTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

var statusLabels = map[string]string{
	"pending":   "Onay bekliyor",
	"confirmed": "Onaylandı",
	"cancelled": "İptal edildi",
}

// bookingView şablona randevu saatini kendi saat diliminde verir.
type bookingView struct {
	BookingPayload
}

func (v bookingView) Local() time.Time {
	loc, err := time.LoadLocation(v.Timezone)
	if err != nil {
		return v.StartsAt.UTC()
	}
	return v.StartsAt.In(loc)
}

func (v bookingView) StatusLabel() string {
	if label, ok := statusLabels[v.Status]; ok {
		return label
	}
	return v.Status
}

func renderMail(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
