package intcode

import "fmt"

// DefaultMemLimit bounds how far indirect addressing may reach; stores
// and loads at or past it fault. Generous by default since programs
// routinely write far beyond their own length.
const DefaultMemLimit = 1 << 20

const defaultPageSize = 256

// memCore implements sparse paged integer memory: pages are allocated
// on first store, unallocated cells load as zero, and addresses are
// never clamped. Pages may not all be the same size (a page filling a
// gap between two existing pages is cut to fit), but usually are.
type memCore struct {
	pages [][]int64
	bases []int64

	memLimit int64
	pageSize int64

	// top is one past the highest cell ever stored, independent of
	// page rounding.
	top int64
}

// MemFault indicates a load or store at a negative address or at an
// address past the memory limit. Always fatal to the run.
type MemFault struct {
	Addr int64
	Op   string
}

func (mf MemFault) Error() string {
	return fmt.Sprintf("memory fault: %v @%v", mf.Op, mf.Addr)
}

func (mem *memCore) memSize() int64 {
	if i := len(mem.bases) - 1; i >= 0 {
		return mem.bases[i] + int64(len(mem.pages[i]))
	}
	return 0
}

func (mem *memCore) check(addr int64, op string) error {
	if addr < 0 {
		return MemFault{addr, op}
	}
	if lim := mem.memLimit; lim != 0 && addr >= lim {
		return MemFault{addr, op}
	}
	return nil
}

func (mem *memCore) load(addr int64) (int64, error) {
	if err := mem.check(addr, "load"); err != nil {
		return 0, err
	}

	if mem.pageSize == 0 || len(mem.pages) == 0 {
		return 0, nil
	}

	pageID := mem.findPage(addr)
	if pageID < 0 {
		return 0, nil
	}

	base := mem.bases[pageID]
	page := mem.pages[pageID]
	if i := addr - base; i < int64(len(page)) {
		return page[i], nil
	}

	return 0, nil
}

// loadInto reads len(buf) cells starting at addr, zeroing the buffer
// where unallocated pages are encountered.
func (mem *memCore) loadInto(addr int64, buf []int64) error {
	if len(buf) == 0 {
		return nil
	}

	end := addr + int64(len(buf))
	if err := mem.check(addr, "load"); err != nil {
		return err
	}
	if err := mem.check(end-1, "load"); err != nil {
		return err
	}

	for i := range buf {
		buf[i] = 0
	}

	pageID := mem.findPage(addr)
	if pageID < 0 {
		pageID = 0
	}

	for ; addr < end && pageID < len(mem.bases); pageID++ {
		base := mem.bases[pageID]
		if base >= end {
			break
		}

		if skip := base - addr; skip > 0 {
			if skip >= int64(len(buf)) {
				break
			}
			addr += skip
			buf = buf[skip:]
		}

		page := mem.pages[pageID]
		if skip := addr - base; skip > 0 {
			if skip >= int64(len(page)) {
				continue
			}
			page = page[skip:]
		}

		n := copy(buf, page)
		buf = buf[n:]
		addr += int64(n)
	}
	return nil
}

func (mem *memCore) stor(addr int64, values ...int64) error {
	if len(values) == 0 {
		return nil
	}

	end := addr + int64(len(values))
	if err := mem.check(addr, "stor"); err != nil {
		return err
	}
	if err := mem.check(end-1, "stor"); err != nil {
		return err
	}

	if mem.pageSize == 0 {
		mem.pageSize = defaultPageSize
	}

	pageID := mem.findPage(addr)
	if pageID < 0 {
		pageID = 0
	}

	for ; addr < end; pageID++ {
		base, page := mem.allocPage(pageID, addr)
		if skip := addr - base; skip > 0 {
			if skip >= int64(len(page)) {
				continue
			}
			page = page[skip:]
		}
		n := copy(page, values)
		values = values[n:]
		addr += int64(n)
	}

	if end > mem.top {
		mem.top = end
	}
	return nil
}

// allocPage returns the page covering addr at pageID, allocating it if
// necessary. A new page starts on a pageSize boundary, shrunk to fit
// against any neighboring page.
func (mem *memCore) allocPage(pageID int, addr int64) (base int64, page []int64) {
	if pageID == len(mem.bases) {
		base = addr / mem.pageSize * mem.pageSize
		size := mem.pageSize
		if i := len(mem.bases) - 1; i >= 0 {
			lastEnd := mem.bases[i] + int64(len(mem.pages[i]))
			if base < lastEnd {
				size -= lastEnd - base
				base = lastEnd
			}
		}
		page = make([]int64, size)
		mem.bases = append(mem.bases, base)
		mem.pages = append(mem.pages, page)
		return base, page
	}

	base = mem.bases[pageID]
	if addr < base {
		nextBase := base
		base = addr / mem.pageSize * mem.pageSize
		size := mem.pageSize
		if gapSize := nextBase - base; size > gapSize {
			size = gapSize
		}
		page = make([]int64, size)
		mem.bases = append(mem.bases, 0)
		mem.pages = append(mem.pages, nil)
		copy(mem.bases[pageID+1:], mem.bases[pageID:])
		copy(mem.pages[pageID+1:], mem.pages[pageID:])
		mem.bases[pageID] = base
		mem.pages[pageID] = page
		return base, page
	}

	return base, mem.pages[pageID]
}

// findPage returns the index of the last page whose base is at or below
// addr, or -1 when no page starts that low.
func (mem *memCore) findPage(addr int64) int {
	i, j := -1, len(mem.bases)-1
	for i < j {
		h := (i + j + 1) / 2
		if mem.bases[h] <= addr {
			i = h
		} else {
			j = h - 1
		}
	}
	return i
}
