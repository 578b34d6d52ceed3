//go:build !(noos && thumb)

package exc

// halt blocks the calling goroutine forever. Without a target there is no CPU
// to stop, the runtime reports the deadlock.
func halt() {
	select {}
}
