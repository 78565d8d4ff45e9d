package cacheext

import "log/slog"

// nopLogger returns a logger that discards all records. It is the default
// so the event hooks stay free of formatting cost unless a host opts in
// with WithLogger.
func nopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// pageAttrs renders the state flags of a page as logging attributes.
func pageAttrs(page Page) []any {
	file, backed := page.File()
	return []any{
		slog.Uint64("file", uint64(file)),
		slog.Bool("file_backed", backed),
		slog.Bool("uptodate", page.UpToDate()),
		slog.Bool("on_list", page.OnList()),
		slog.Bool("dirty", page.Dirty()),
		slog.Bool("writeback", page.Writeback()),
	}
}
