// Command ema-avatar connects an avatar stage to its backend and offers
// operator commands for the backend's HTTP endpoints.
package main
