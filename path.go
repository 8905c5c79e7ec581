package iokit

import "strings"

// IsDir reports whether p denotes a directory, i.e. ends in '/'.
// The empty path is not a directory, so path-less resources such as memory
// buffers can be opened; listing treats it as the current directory.
func IsDir(p string) bool {
	return strings.HasSuffix(p, "/")
}

// Suffix returns everything after the last '.' of p. Hidden files on *nix
// (a name starting with '.') have no suffix unless a second dot follows,
// so "/home/user/.myfile" yields "" and "/home/user/.myfile.txt" yields "txt".
func Suffix(p string) string {
	dot := strings.LastIndexByte(p, '.')
	if dot <= 0 || p[dot-1] == '/' {
		return ""
	}
	if slash := strings.LastIndexByte(p, '/'); slash > dot {
		return ""
	}
	return p[dot+1:]
}

// Dir returns the directory part of p including the trailing '/':
// "/home/user/some.file.txt" yields "/home/user/".
func Dir(p string) string {
	slash := strings.LastIndexByte(p, '/')
	if slash < 0 {
		return ""
	}
	return p[:slash+1]
}

// NotDir returns the file part of p: "/home/user/some.file.txt" yields
// "some.file.txt".
func NotDir(p string) string {
	return p[strings.LastIndexByte(p, '/')+1:]
}

// JoinRoot prefixes p with root. No separator is inserted, so a root meant as
// a directory carries its own trailing '/'.
func JoinRoot(root, p string) string {
	return root + p
}
