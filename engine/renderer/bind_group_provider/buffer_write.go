package bind_group_provider

// BufferWrite describes a single queue write into the buffer at Binding of a BindGroupProvider,
// starting Offset bytes in.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// Fits reports whether the write lies inside a buffer of the given size.
// Queue writes must also be 4-byte aligned in offset and length.
//
// Parameters:
//   - size: the destination buffer size in bytes
//
// Returns:
//   - bool: true if the write can be submitted
func (w BufferWrite) Fits(size uint64) bool {
	n := uint64(len(w.Data))
	if w.Offset%4 != 0 || n%4 != 0 {
		return false
	}
	return w.Offset <= size && n <= size-w.Offset
}
