// File: dgram/sockaddr.go
//
// UNIX-domain addressing and the sun_path truncation quirk.

package dgram

import "golang.org/x/sys/unix"

// SunPathMax is the number of path bytes an address structure can carry,
// excluding the null terminator (107 on Linux, 103 on the BSDs/darwin).
var SunPathMax = len(unix.RawSockaddrUnix{}.Path) - 1

// truncatePath clamps path to SunPathMax bytes. Over-length paths are
// deliberately truncated and null-terminated rather than rejected; callers
// binding or sending with a too-long path get the truncated address.
func truncatePath(path string) string {
	if len(path) > SunPathMax {
		return path[:SunPathMax]
	}
	return path
}
