// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import "unsafe"

// FailNextAllocs makes the next n allocations return nil.
func (d *Driver) FailNextAllocs(n int) {
	d.mu.Lock()
	d.failAllocs = n
	d.mu.Unlock()
}

// Alloc implements driver.Memory. The returned slice starts at an address
// that is a multiple of align.
func (d *Driver) Alloc(size, align uint32) []byte {
	d.mu.Lock()
	defer d.mu.Unlock()

	if size == 0 {
		d.stats.FailedAllocs++
		return nil
	}
	if d.failAllocs > 0 {
		d.failAllocs--
		d.stats.FailedAllocs++
		d.log().Debug("injected allocation failure", "size", size)
		return nil
	}
	if d.heapLimit > 0 && d.stats.HeapInUse+int(size) > d.heapLimit {
		d.stats.FailedAllocs++
		d.log().Warn("heap exhausted", "size", size, "inUse", d.stats.HeapInUse, "limit", d.heapLimit)
		return nil
	}
	if align == 0 {
		align = 1
	}

	raw := make([]byte, int(size)+int(align))
	off := int((uintptr(align) - uintptr(unsafe.Pointer(&raw[0]))%uintptr(align)) % uintptr(align))
	buf := raw[off : off+int(size) : off+int(size)]

	d.live[&buf[0]] = int(size)
	d.stats.Allocs++
	d.stats.HeapInUse += int(size)
	return buf
}

// Free implements driver.Memory. Buffers not returned by Alloc are ignored.
func (d *Driver) Free(buf []byte) {
	if len(buf) == 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	key := &buf[0]
	size, ok := d.live[key]
	if !ok {
		d.log().Debug("free of unknown buffer", "len", len(buf))
		return
	}
	delete(d.live, key)
	d.stats.Frees++
	d.stats.HeapInUse -= size
}

// LiveAllocs returns the number of allocations not yet freed.
func (d *Driver) LiveAllocs() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.live)
}
