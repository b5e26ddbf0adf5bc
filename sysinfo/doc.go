// Package sysinfo answers the get_system_info command: platform and
// architecture names as the desktop front-end knows them, the macOS display
// report and a handful of host facts read through gopsutil.
package sysinfo
