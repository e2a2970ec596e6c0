// Package imageurl rewrites cloud-storage "file view" links into direct
// image URLs.
//
// Google Drive share links are the only rewrite source understood today:
//
//	https://drive.google.com/file/d/<ID>/view
//	https://drive.google.com/open?id=<ID>
//	https://drive.google.com/uc?export=view&id=<ID>
//
// all become
//
//	https://lh3.googleusercontent.com/d/<ID>=w<width>
//
// Every other URL is returned unchanged, which makes Normalize idempotent.
package imageurl
