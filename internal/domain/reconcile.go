package domain

// DeriveTagVersion parses a version out of a repository tag (or describe
// output). A prerelease segment on the tag marks commits past the release,
// so it is rewritten as "post.<original>" to keep it out of release space.
func DeriveTagVersion(tag string) (Version, error) {
	v, err := Parse(tag)
	if err != nil {
		return Version{}, err
	}
	if v.Prerelease != "" {
		v.Prerelease = "post." + v.Prerelease
	}
	return v, nil
}

// Reconcile checks a tag-derived version against the current recorded one.
// It fails only when the tag carries a prerelease (the working tree has moved
// past the tagged release) and the recorded version has not been updated to
// match the derived value.
func Reconcile(tagDerived, current Version) bool {
	if tagDerived.Prerelease != "" && !current.Equal(tagDerived) {
		return false
	}
	return true
}
