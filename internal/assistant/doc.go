// Package assistant simulates the pharmacy chat assistant: canned replies
// after a fixed delay, image validation for uploads and a file-backed camera.
package assistant
