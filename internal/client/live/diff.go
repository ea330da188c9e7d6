package live

import "bytes"

// Row is one stored record: its primary key and its encoded document.
type Row struct {
	Key  string
	Data []byte
}

// Changeset describes how a query result changed. Insertions and
// Modifications index the new result, Deletions index the old one.
type Changeset struct {
	Insertions    []int
	Modifications []int
	Deletions     []int
}

func (c Changeset) Empty() bool {
	return len(c.Insertions) == 0 && len(c.Modifications) == 0 && len(c.Deletions) == 0
}

// Diff compares two results by key. A row whose document is byte-for-byte
// equal in both results is unchanged.
func Diff(prev, next []Row) Changeset {
	var cs Changeset

	old := make(map[string][]byte, len(prev))
	for _, r := range prev {
		old[r.Key] = r.Data
	}
	seen := make(map[string]struct{}, len(next))
	for i, r := range next {
		seen[r.Key] = struct{}{}
		data, ok := old[r.Key]
		switch {
		case !ok:
			cs.Insertions = append(cs.Insertions, i)
		case !bytes.Equal(data, r.Data):
			cs.Modifications = append(cs.Modifications, i)
		}
	}
	for i, r := range prev {
		if _, ok := seen[r.Key]; !ok {
			cs.Deletions = append(cs.Deletions, i)
		}
	}
	return cs
}
