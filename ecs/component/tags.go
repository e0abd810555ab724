package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type DirectorTag struct{}

var DirectorTagComponent = NewComponent[DirectorTag]()
