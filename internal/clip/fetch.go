package clip

import (
	"context"
	"fmt"

	"go.klb.dev/clipshare/internal/message"
)

// Fetch reads one kind of payload from src. For KindFiles, expandDirs selects
// CopiedDirsFiles over CopiedFiles.
func Fetch(ctx context.Context, src Source, kind message.Kind, expandDirs bool) (*message.Payload, error) {
	switch kind {
	case message.KindText:
		text, err := src.Text(ctx)
		if err != nil {
			return nil, err
		}
		return message.NewText(text), nil

	case message.KindImage:
		img, err := src.Image(ctx)
		if err != nil {
			return nil, err
		}
		return message.NewImage(img), nil

	case message.KindFiles:
		if expandDirs {
			df, err := src.CopiedDirsFiles(ctx)
			if err != nil {
				return nil, err
			}
			return message.NewFiles(df.Files, df.Base), nil
		}
		files, err := src.CopiedFiles(ctx)
		if err != nil {
			return nil, err
		}
		return message.NewFiles(files, ""), nil
	}
	return nil, fmt.Errorf("clip: unsupported payload kind %q", kind)
}
