package classfile

// Exported for white-box testing.
var (
	DecodeModifiedUTF8 = decodeModifiedUTF8
	ParseSignature     = parseSignature
	ParseMethodDesc    = parseMethodDescriptor
)
