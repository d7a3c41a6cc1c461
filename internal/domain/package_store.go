package domain

import "slices"

// PackageStore maps package ids to their records with constant time lookup.
//
// Records are stored by pointer and never copied, so status changes made by
// the delivery simulation are visible to every holder of the store. A store
// is written once while loading and is safe for concurrent reads afterwards.
type PackageStore struct {
	byID map[int]*Package
}

func NewPackageStore(capacity int) *PackageStore {
	return &PackageStore{byID: make(map[int]*Package, capacity)}
}

// Insert a package record. Ids must be positive and unique.
func (s *PackageStore) Put(pkg *Package) error {
	if pkg == nil {
		return invalid("package", "must be non-nil")
	}
	if pkg.PackageID <= 0 {
		return invalid("package_id", "must be positive, got %d", pkg.PackageID)
	}
	if _, ok := s.byID[pkg.PackageID]; ok {
		return invalid("package_id", "duplicate id %d", pkg.PackageID)
	}
	s.byID[pkg.PackageID] = pkg
	return nil
}

// Get returns the record for id or a PackageNotFoundError.
func (s *PackageStore) Get(id int) (*Package, error) {
	pkg, ok := s.byID[id]
	if !ok {
		return nil, &PackageNotFoundError{PackageID: id}
	}
	return pkg, nil
}

// IDs returns all package ids in ascending order.
func (s *PackageStore) IDs() []int {
	ids := make([]int, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s *PackageStore) Len() int { return len(s.byID) }

// StoreFrom builds a store from a package list, failing on the first invalid record.
func StoreFrom(pkgs []*Package) (*PackageStore, error) {
	s := NewPackageStore(len(pkgs))
	for _, p := range pkgs {
		if err := s.Put(p); err != nil {
			return nil, err
		}
	}
	return s, nil
}
