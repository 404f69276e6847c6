package recipe

// Source is the backing store of a recipe entry: either a file on disk or
// raw in-memory content. Exactly one of the two shapes exists per entry;
// consumers switch exhaustively on the concrete type.
type Source interface {
	clone() Source
	sealedSource()
}

// PathSource backs an entry with a file on disk.
type PathSource struct {
	Path string
}

func (s PathSource) clone() Source { return s }
func (s PathSource) sealedSource() {}

// ContentSource backs an entry with in-memory document text and an optional
// display name.
type ContentSource struct {
	Content string
	Name    string
}

func (s ContentSource) clone() Source { return s }
func (s ContentSource) sealedSource() {}
