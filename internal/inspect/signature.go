package inspect

// Signature is the part of a method that identifies it in an inventory.
type Signature struct {
	Name   string
	Args   []string
	Return string
}

// Signature returns the identifying part of m.
func (m MethodInfo) Signature() Signature {
	return Signature{Name: m.Name, Args: m.Args, Return: m.Return}
}

// Equal compares name, return type and argument types position by position.
// Type names are compared literally, so List and java.util.List differ.
func (s Signature) Equal(o Signature) bool {
	if s.Name != o.Name || s.Return != o.Return || len(s.Args) != len(o.Args) {
		return false
	}
	for i := range s.Args {
		if s.Args[i] != o.Args[i] {
			return false
		}
	}
	return true
}

// FindExisting returns the first entry of accumulated with the candidate's
// signature.
func FindExisting(accumulated []MethodInfo, candidate MethodInfo) (MethodInfo, bool) {
	want := candidate.Signature()
	for _, m := range accumulated {
		if m.Signature().Equal(want) {
			return m, true
		}
	}
	return MethodInfo{}, false
}
