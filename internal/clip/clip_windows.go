//go:build windows

package clip

import (
	"fmt"
	"log/slog"
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"

	"go.klb.dev/clipshare/internal/screenshot"
)

const (
	cfHDrop = 15

	fileAttributeDevice  = 0x00000040
	fileAttributeOffline = 0x00001000
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	shell32  = windows.NewLazySystemDLL("shell32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procOpenClipboard              = user32.NewProc("OpenClipboard")
	procCloseClipboard             = user32.NewProc("CloseClipboard")
	procIsClipboardFormatAvailable = user32.NewProc("IsClipboardFormatAvailable")
	procGetClipboardData           = user32.NewProc("GetClipboardData")
	procDragQueryFileW             = shell32.NewProc("DragQueryFileW")
	procGlobalLock                 = kernel32.NewProc("GlobalLock")
	procGlobalUnlock               = kernel32.NewProc("GlobalUnlock")
)

// New returns the Windows clipboard backend. File lists come from the
// CF_HDROP format Explorer places on the clipboard.
func New(shot screenshot.Producer) Source {
	src := newNative("Windows Clipboard", shot)
	if n, ok := src.(*nativeSource); ok {
		n.dropList = dropFiles
		n.classify = attrKind
	}
	return src
}

// dropFiles lists the paths held in CF_HDROP.
func dropFiles() ([]string, error) {
	// The clipboard is owned per thread between Open and Close.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if r, _, err := procOpenClipboard.Call(0); r == 0 {
		return nil, fmt.Errorf("OpenClipboard: %w", err)
	}
	defer procCloseClipboard.Call()

	if r, _, _ := procIsClipboardFormatAvailable.Call(cfHDrop); r == 0 {
		return nil, ErrNoFiles
	}
	h, _, _ := procGetClipboardData.Call(cfHDrop)
	if h == 0 {
		return nil, ErrNoFiles
	}
	hdrop, _, _ := procGlobalLock.Call(h)
	if hdrop == 0 {
		return nil, ErrNoFiles
	}
	defer procGlobalUnlock.Call(h)

	count, _, _ := procDragQueryFileW.Call(hdrop, 0xFFFFFFFF, 0, 0)
	if count == 0 {
		return nil, ErrNoFiles
	}
	paths := make([]string, 0, count)
	for i := uintptr(0); i < count; i++ {
		size, _, _ := procDragQueryFileW.Call(hdrop, i, 0, 0)
		buf := make([]uint16, size+1)
		procDragQueryFileW.Call(hdrop, i, uintptr(unsafe.Pointer(&buf[0])), size+1)
		paths = append(paths, windows.UTF16ToString(buf))
	}
	return paths, nil
}

// attrKind classifies a dropped path by its attributes. Devices, reparse
// points and offline files are never returned.
func attrKind(path string) entryKind {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return kindOther
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		slog.Debug("clip: GetFileAttributes failed", "path", path, "err", err)
		return kindOther
	}
	if attrs&(fileAttributeDevice|windows.FILE_ATTRIBUTE_REPARSE_POINT|fileAttributeOffline) != 0 {
		return kindOther
	}
	if attrs&windows.FILE_ATTRIBUTE_DIRECTORY != 0 {
		return kindDir
	}
	return kindFile
}
