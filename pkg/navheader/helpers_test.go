package navheader_test

import "github.com/vango-dev/navheader/pkg/vango"

func listener(fn func()) vango.Listener {
	return vango.ListenerFunc(fn)
}
