package rod

var TagError = tagError

func (o Options) WithDefaults() Options { return o.withDefaults() }
