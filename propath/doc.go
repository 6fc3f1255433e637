// Package propath reads and writes values at dotted paths such as
// "profile.address.city" over maps, structs, slices and keyed containers
// implementing Getter and Setter.
package propath
