// Package machine is imported by the runtime and allows the target to implement
// some hooks. It brings up fault handling before any other package initializer
// runs and provides the failsafe console used by print and panic.
package machine

// VectorTableSize is the size in bytes of the relocated vector table. It
// covers the 16 system exceptions and 240 external interrupts.
const VectorTableSize = 1024
