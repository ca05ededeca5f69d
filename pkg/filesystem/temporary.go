package filesystem

const (
	// TemporaryNamePrefix is the file name prefix used for all temporary files
	// created by tether (e.g. the staging file used when writing a shadow tag
	// atomically). The dot-prefix keeps such files hidden on POSIX; the
	// filesystem watcher does not filter them, so they appear in its event
	// stream like any other path. It may be suffixed with additional
	// elements if desired.
	TemporaryNamePrefix = ".tether-temporary-"
)
