package source

// FileSet represents a set of source files.
type FileSet struct {
	Files []*File // list of files in the order added to the set
}

// NewFileSet creates a new file set.
func NewFileSet() *FileSet {
	return &FileSet{}
}

// AddFileData adds a new file in the file set with data.
func (s *FileSet) AddFileData(filename string, data []byte) *File {
	f := NewFile(filename, data)
	f.Index = len(s.Files)
	s.Files = append(s.Files, f)
	return f
}

// Size returns the total number of bytes of every file in the set.
func (s *FileSet) Size() (n int) {
	for _, f := range s.Files {
		n += f.Size()
	}
	return
}
