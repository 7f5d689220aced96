package version

// VERSION is the current version of the quoteserver
const VERSION = "0.2.0"
