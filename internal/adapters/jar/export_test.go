package jar

// MaxLineLength exposes the manifest line length limit for testing.
const MaxLineLength = maxLineLength
