// Package converter builds the xresloader command line and starts converter
// processes in stdin mode.
//
// Types:
//   - Spec: java executable, JVM options, converter jar and working directory
//   - Process: a running converter with its three standard streams
//   - Launcher: starts one Process per worker; ExecLauncher uses os/exec
package converter
