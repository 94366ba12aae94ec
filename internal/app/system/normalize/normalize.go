// Package normalize provides pure string normalization helpers shared by the
// registry, stores, and handlers. Every function here is deterministic and
// side-effect free so the same input always maps to the same stored form.
package normalize

import "strings"

// PartitionPrefix namespaces tenant partitions away from the system
// collections (organizations, admins, migrations).
const PartitionPrefix = "org_"

// OrgName normalizes an organization name for registry lookups: surrounding
// whitespace is dropped, interior casing and spacing are preserved.
func OrgName(name string) string {
	return strings.TrimSpace(name)
}

// Email normalizes an email address to its canonical lowercase form.
func Email(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Partition derives the partition (collection) name for an organization name.
// The derivation lowercases the trimmed name and collapses every run of
// characters outside [a-z0-9_] to a single underscore, then applies
// PartitionPrefix. It is pure: Partition(" Acme ") == Partition("acme").
//
// Two distinct names can still derive the same partition ("A-B" and "A_B");
// the organization store's unique index on partition_name rejects the second
// create rather than silently sharing a partition.
func Partition(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(PartitionPrefix) + len(s))
	b.WriteString(PartitionPrefix)

	inRun := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			inRun = false
		default:
			if !inRun {
				b.WriteByte('_')
				inRun = true
			}
		}
	}
	return b.String()
}
