// Package carousel implements self-driving scroll lanes.
//
// A lane advances its offset once per display frame in a fixed direction and
// wraps seamlessly because its content is duplicated once at mount. Manual
// scrolling takes the lane over until it has been idle for the configured
// timeout; hovering halves the speed. Everything runs on a single cooperative
// thread supplied by a Host, so lane state needs no locking.
package carousel
