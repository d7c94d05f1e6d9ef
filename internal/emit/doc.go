// Package emit renders target declarations as Java source files.
//
// One declaration becomes one .java file under its package directory.
// Layout is handled by a text/template; signatures and member blocks
// are prebuilt so the template stays dumb.
package emit
