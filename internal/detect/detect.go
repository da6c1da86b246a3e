// Package detect classifies project files as text or binary and assigns
// the language tag used for fenced code blocks. Classification combines a
// known-binary extension list, a size ceiling, and content sniffing over a
// fixed-size prefix of the file.
package detect

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/aipaste/aipaste/internal/types"
	"github.com/aipaste/aipaste/internal/utils"
)

// DefaultSizeLimitBytes is the ceiling above which files are treated as
// binary without reading their contents.
const DefaultSizeLimitBytes int64 = 1_000_000

// sniffLength bounds how much of a file is read for content sniffing.
const sniffLength = 4096

// binaryExtensions lists lower-cased extensions that are always binary.
var binaryExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".bmp": {}, ".tiff": {},
	".webp": {}, ".ico": {}, ".svg": {}, ".psd": {}, ".ai": {}, ".eps": {},
	".raw": {}, ".pdf": {}, ".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {},
	".ppt": {}, ".pptx": {}, ".zip": {}, ".tar": {}, ".gz": {}, ".rar": {},
	".7z": {}, ".bz2": {}, ".iso": {}, ".exe": {}, ".dll": {}, ".so": {},
	".dylib": {}, ".lib": {}, ".obj": {}, ".bin": {}, ".apk": {}, ".app": {},
	".msi": {}, ".ttf": {}, ".otf": {}, ".woff": {}, ".woff2": {}, ".eot": {},
	".mp3": {}, ".mp4": {}, ".wav": {}, ".ogg": {}, ".avi": {}, ".mov": {},
	".wmv": {}, ".flv": {}, ".mkv": {}, ".aac": {}, ".m4a": {}, ".flac": {},
	".db": {}, ".sqlite": {}, ".sqlite3": {}, ".mdb": {}, ".frm": {}, ".ibd": {},
	".class": {}, ".pyc": {}, ".pyo": {}, ".pyd": {}, ".o": {}, ".a": {},
	".pkl": {}, ".dat": {},
}

// Classify decides whether the file at filePath is text or binary. Files
// with a known binary extension, files larger than sizeLimitBytes, empty
// files, and files that cannot be read are binary. Everything else is
// sniffed: a NUL byte means binary, valid UTF-8 means text, and remaining
// content falls through to MIME detection.
func Classify(filePath string, sizeLimitBytes int64) types.Classification {
	if _, known := binaryExtensions[fileExtension(filePath)]; known {
		return types.ClassificationBinary
	}
	fileInformation, statError := os.Stat(filePath)
	if statError != nil {
		return types.ClassificationBinary
	}
	if fileInformation.Size() > sizeLimitBytes {
		return types.ClassificationBinary
	}
	prefix, sampleFilled, readError := readPrefix(filePath)
	if readError != nil {
		return types.ClassificationBinary
	}
	if len(prefix) == 0 {
		return types.ClassificationBinary
	}
	if textLikePrefix(prefix, sampleFilled) {
		return types.ClassificationText
	}
	return types.ClassificationBinary
}

// fileExtension returns the lower-cased extension, treating dotfiles such
// as ".gitignore" as having none.
func fileExtension(filePath string) string {
	baseName := filepath.Base(filePath)
	extension := filepath.Ext(baseName)
	if extension == baseName {
		return ""
	}
	return strings.ToLower(extension)
}

// readPrefix reads up to sniffLength bytes from the start of the file and
// reports whether the sample window was completely filled.
func readPrefix(filePath string) ([]byte, bool, error) {
	fileHandle, openError := os.Open(filePath)
	if openError != nil {
		return nil, false, openError
	}
	defer func() {
		_ = fileHandle.Close()
	}()
	buffer := make([]byte, sniffLength)
	bytesRead, readError := io.ReadFull(fileHandle, buffer)
	if readError != nil && !errors.Is(readError, io.EOF) && !errors.Is(readError, io.ErrUnexpectedEOF) {
		return nil, false, readError
	}
	return buffer[:bytesRead], bytesRead == sniffLength, nil
}

// textLikePrefix reports whether the sampled prefix reads as text. A read
// that filled the whole sample window may have split the final UTF-8 rune,
// so validation retries with up to three trailing bytes removed.
func textLikePrefix(prefix []byte, sampleFilled bool) bool {
	if bytes.IndexByte(prefix, 0) >= 0 {
		return false
	}
	if !utils.IsBinaryData(prefix) {
		return true
	}
	if !sampleFilled {
		return false
	}
	for trimmed := 1; trimmed < utf8.UTFMax && trimmed < len(prefix); trimmed++ {
		if utf8.Valid(prefix[:len(prefix)-trimmed]) {
			return true
		}
	}
	return false
}
