package ggcodec

import "github.com/ozroc/potp-go/potperr"

func notSerializable(v any) *potperr.Error {
	return potperr.New(potperr.NotSerializable, "value of type %T is not serializable", v)
}

func notInstantiable(reason string) *potperr.Error {
	return potperr.New(potperr.NotInstantiable, "%s", reason)
}
