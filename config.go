package vidgrab

import (
	"strings"
	"text/template"
	"time"
)

// FilenameConfig generates default target filenames for grabs that don't
// supply one.
type FilenameConfig struct {
	Template *template.Template
	// Ext is the extension used by the default template, with leading dot.
	Ext string
}

func NewFilenameConfig() *FilenameConfig {
	return &FilenameConfig{
		Template: template.Must(template.New("filename").Parse("video-{{.Timestamp}}{{.Ext}}")),
		Ext:      ".mp4",
	}
}

type filenameTemplateArgs struct {
	Timestamp string
	Ext       string
}

// Generate produces a timestamp-derived filename. Uniqueness across calls
// within the same second is not guaranteed.
func (c *FilenameConfig) Generate(now time.Time) (string, error) {
	args := filenameTemplateArgs{
		Timestamp: now.Format("20060102-150405"),
		Ext:       c.Ext,
	}
	builder := strings.Builder{}
	if err := c.Template.Execute(&builder, &args); err != nil {
		return "", err
	}
	return builder.String(), nil
}
