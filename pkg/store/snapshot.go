package store

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/example/warehouse/pkg/models"
)

// snapshot is the layout of the persistence document: one XML file
// holding the full order and product lists.
type snapshot struct {
	XMLName  xml.Name          `xml:"Data"`
	Orders   []*models.Order   `xml:"Orders>Order"`
	Products []*models.Product `xml:"Products>Product"`
}

// SaveTo writes the complete store state as a single XML document.
func (s *Store) SaveTo(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(snapshot{Orders: s.orders, Products: s.products}); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return enc.Close()
}

// LoadFrom replaces the in-memory state wholesale with the snapshot
// read from r. Next-identifier counters are recomputed as the highest
// existing identifier plus one, or 1 for an empty collection.
func (s *Store) LoadFrom(r io.Reader) error {
	var doc snapshot
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	s.orders = doc.Orders
	s.products = doc.Products

	s.nextOrderID = 1
	for _, o := range s.orders {
		if o.ID >= s.nextOrderID {
			s.nextOrderID = o.ID + 1
		}
	}
	s.nextProductID = 1
	for _, p := range s.products {
		if p.ID >= s.nextProductID {
			s.nextProductID = p.ID + 1
		}
	}
	return nil
}

// SaveFile writes the snapshot to path, replacing any existing file.
func (s *Store) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	if err := s.SaveTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFile loads the snapshot at path. A missing file is not an error:
// there is simply nothing to load.
func (s *Store) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open snapshot file: %w", err)
	}
	defer f.Close()
	return s.LoadFrom(f)
}
