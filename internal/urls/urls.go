package urls

// Documentation URLs. All point into the project README.

// Repository is the project home, shown in the menu header.
const Repository = "github.com/muurk/proxy-cli"

// ShellWrapper explains how the 'proxy' function applies the directive
// line to the calling shell.
const ShellWrapper = "https://github.com/muurk/proxy-cli#shell-wrapper"

// Troubleshooting covers terminals that cannot run the interactive menu
// (pipes, dumb terminals, CI).
const Troubleshooting = "https://github.com/muurk/proxy-cli#troubleshooting"
