package classfile

import "strings"

// parseFieldDescriptor parses exactly one field descriptor and yields the class it names, if any.
func parseFieldDescriptor(desc string, yield func(string)) error {
	next, err := parseFieldType(desc, 0, yield)
	if err != nil {
		return err
	}
	if next != len(desc) {
		return malformed("trailing characters in field descriptor %q", desc)
	}
	return nil
}

// parseMethodDescriptor parses "(" {FieldType} ")" ReturnType.
func parseMethodDescriptor(desc string, yield func(string)) error {
	if len(desc) == 0 || desc[0] != '(' {
		return malformed("method descriptor %q does not start with '('", desc)
	}
	i := 1
	for i < len(desc) && desc[i] != ')' {
		next, err := parseFieldType(desc, i, yield)
		if err != nil {
			return err
		}
		i = next
	}
	if i >= len(desc) {
		return malformed("unterminated parameter list in method descriptor %q", desc)
	}
	i++
	if i < len(desc) && desc[i] == 'V' {
		i++
	} else {
		next, err := parseFieldType(desc, i, yield)
		if err != nil {
			return err
		}
		i = next
	}
	if i != len(desc) {
		return malformed("trailing characters in method descriptor %q", desc)
	}
	return nil
}

func parseFieldType(desc string, i int, yield func(string)) (int, error) {
	for i < len(desc) && desc[i] == '[' {
		i++
	}
	if i >= len(desc) {
		return i, malformed("truncated descriptor %q", desc)
	}
	switch desc[i] {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		return i + 1, nil
	case 'L':
		end := strings.IndexByte(desc[i:], ';')
		if end < 0 {
			return i, malformed("unterminated class type in descriptor %q", desc)
		}
		name := desc[i+1 : i+end]
		if !validInternalName(name) {
			return i, malformed("invalid class name %q in descriptor %q", name, desc)
		}
		yield(name)
		return i + end + 1, nil
	default:
		return i, malformed("invalid type %q in descriptor %q", desc[i], desc)
	}
}

// validInternalName reports whether name is a binary class name in internal form.
func validInternalName(name string) bool {
	if name == "" {
		return false
	}
	for segment := range strings.SplitSeq(name, "/") {
		if segment == "" || strings.ContainsAny(segment, ".;[") {
			return false
		}
	}
	return true
}
