package domain

// TypeBlob is the raw binary content of one compiled type together with its origin.
type TypeBlob struct {
	// Source identifies the artifact or directory the type was read from.
	Source string
	// Entry is the path of the type inside its source.
	Entry string
	// Data is the class file content.
	Data []byte
}
