package compute

import (
	"errors"
	"testing"

	"github.com/san-kum/isingsim/internal/ising"
)

type offlineBackend struct{ CPUBackend }

func (o *offlineBackend) Name() string    { return "offline" }
func (o *offlineBackend) Available() bool { return false }

func TestRegistry_Lookup(t *testing.T) {
	reg := NewRegistry()

	b, err := reg.Lookup("cpu")
	if err != nil {
		t.Fatalf("lookup cpu: %v", err)
	}
	if b.Name() != "cpu" {
		t.Errorf("Name() = %q, want cpu", b.Name())
	}

	if _, err := reg.Lookup("quantum"); !errors.Is(err, ising.ErrResource) {
		t.Errorf("unknown backend error = %v, want ErrResource", err)
	}

	reg.Register("offline", func() Backend { return &offlineBackend{} })
	if _, err := reg.Lookup("offline"); !errors.Is(err, ising.ErrResource) {
		t.Errorf("unavailable backend error = %v, want ErrResource", err)
	}

	names := reg.Names()
	if len(names) != 2 || names[0] != "cpu" || names[1] != "offline" {
		t.Errorf("Names() = %v", names)
	}
}

func TestCPUBackend_UpdateWithoutAttach(t *testing.T) {
	b := NewCPUBackend()
	if err := b.Update(1, 1, 0); !errors.Is(err, ising.ErrResource) {
		t.Errorf("error = %v, want ErrResource", err)
	}
}

func TestCPUBackend_AttachMismatch(t *testing.T) {
	b := NewCPUBackend()
	if err := b.Attach(make([]int8, 15), 4, 1); !errors.Is(err, ising.ErrResource) {
		t.Errorf("error = %v, want ErrResource", err)
	}
}

func TestCPUBackend_MutatesInPlace(t *testing.T) {
	lat, _ := ising.NewLattice(8)
	lat.InitializeRandom(ising.NewSource(3))
	buf := lat.Spins()
	before := lat.Copy()

	b := NewCPUBackend()
	if err := b.Attach(buf, lat.Len(), 3); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if &b.Handle()[0] != &buf[0] {
		t.Fatal("backend copied the buffer instead of borrowing it")
	}
	if err := b.Update(10, 1/3.0, 0); err != nil {
		t.Fatalf("update: %v", err)
	}

	changed := 0
	for k := range before {
		if before[k] != buf[k] {
			changed++
		}
	}
	if changed == 0 {
		t.Error("hot update left the lattice untouched")
	}
	if err := lat.Validate(); err != nil {
		t.Errorf("backend produced invalid spins: %v", err)
	}

	b.Cleanup()
	if b.Handle() != nil {
		t.Error("Cleanup kept the handle")
	}
}

func TestCPUBackend_OrdersAtLowTemperature(t *testing.T) {
	lat, _ := ising.NewLattice(8)
	lat.Flip(2, 3)

	b := NewCPUBackend()
	_ = b.Attach(lat.Spins(), 8, 11)
	if err := b.Update(50, 1/0.5, 0); err != nil {
		t.Fatal(err)
	}
	if m := ising.Magnetization(lat); m < 56 {
		t.Errorf("magnetization %d: ordered lattice melted at T=0.5", m)
	}
}
