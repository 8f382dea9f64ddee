// Package sniff defines the contract between the runner and individual rules.
//
// A Sniff declares the token kinds it wants (Register) and is called once per
// matching token (Process). It reports findings through the File handle it is
// given and never mutates the token stream. Capabilities that PHP_CodeSniffer
// rules usually mix in through traits (call-site detection, legacy class name
// lookup) are small interfaces injected at construction.
package sniff
