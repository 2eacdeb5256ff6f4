package tensor

// Device represents the compute device a buffer lives on.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	CUDA
	Vulkan
	Metal
	WebGPU
)

// MaskAll is the device mask of an expression that can run anywhere,
// e.g. a scalar constant.
const MaskAll uint32 = 0xffff

// Mask returns the single-device bitmask. Compatibility of two operands is
// the intersection of their masks.
func (d Device) Mask() uint32 {
	return 1 << uint(d)
}

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case CUDA:
		return "CUDA"
	case Vulkan:
		return "Vulkan"
	case Metal:
		return "Metal"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}
