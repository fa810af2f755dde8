package model

import (
	"encoding/gob"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros"
	"io"
	"sort"
)

/*
MemorizeMap maps names to gob-encodable parameter blocks of a model
*/
type MemorizeMap map[string]interface{}

/*
Memorize writes named parameter blocks to the output as a gob stream
*/
func Memorize(o iokit.Output, m MemorizeMap) error {
	wh, err := o.Create()
	if err != nil {
		return zorros.Trace(err)
	}
	defer wh.End()
	if err = encode(wh, m); err != nil {
		return err
	}
	if err = wh.Commit(); err != nil {
		return zorros.Trace(err)
	}
	return nil
}

func encode(w io.Writer, m MemorizeMap) error {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	enc := gob.NewEncoder(w)
	if err := enc.Encode(names); err != nil {
		return zorros.Trace(err)
	}
	for _, k := range names {
		if err := enc.Encode(m[k]); err != nil {
			return zorros.Wrapf(err, "failed to memorize `%v`: %v", k, err.Error())
		}
	}
	return nil
}

/*
Recall reads a gob stream written by Memorize filling the passed blocks,
names absent from the map are skipped
*/
func Recall(r io.Reader, m MemorizeMap) error {
	dec := gob.NewDecoder(r)
	var names []string
	if err := dec.Decode(&names); err != nil {
		return zorros.Trace(err)
	}
	for _, k := range names {
		v, ok := m[k]
		if !ok {
			if err := dec.Decode(nil); err != nil {
				return zorros.Trace(err)
			}
			continue
		}
		if err := dec.Decode(v); err != nil {
			return zorros.Wrapf(err, "failed to recall `%v`: %v", k, err.Error())
		}
	}
	return nil
}
