package collatz

// Version is the release version of the collatz module.
const Version = "0.1.0"
