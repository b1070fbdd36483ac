package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

const (
	MimeVideo = "video/"
	MimeImage = "image/"
	MimeWAV   = "audio/wav"
	MimePNG   = "image/png"
)

// VideoContentTypes maps the accepted upload extensions to the content
// type recorded alongside the stored file. Membership doubles as the
// extension allowlist.
var VideoContentTypes = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
}
