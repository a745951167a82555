package message

import (
	"context"
	"log/slog"
)

// LogPayload logs a clipboard read at INFO (kind, size) and at DEBUG a text
// preview up to 120 chars, or the file names.
func LogPayload(event string, p *Payload) {
	slog.Info(event, "kind", p.Kind, "size_bytes", len(p.Data), "files", len(p.Files))

	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	switch p.Kind {
	case KindText:
		preview := string(p.Data)
		if len(preview) > 120 {
			preview = preview[:120] + "…"
		}
		slog.Debug("clipboard text", "preview", preview)
	case KindFiles:
		for _, f := range p.Files {
			slog.Debug("clipboard file", "path", f)
		}
	default:
		slog.Debug("clipboard item", "mime", p.MIME, "size_bytes", len(p.Data))
	}
}
