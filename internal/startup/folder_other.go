//go:build !windows

package startup

func shellStartupFolder() string {
	return ""
}
