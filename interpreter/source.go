package interpreter

// SourceReader implements the source reader contract (spec §6) the
// interpreter needs to resolve include/incbin. ChangeDir returns a restore
// closure so nested includes compose: the caller defers it immediately,
// guaranteeing the prior directory is restored even if executing the
// included statements fails.
type SourceReader interface {
	ReadText(path string) (string, error)
	ReadBinary(path string) ([]byte, error)
	ChangeDir(path string, isFile bool) (restore func(), err error)
	GetDir() string
}
