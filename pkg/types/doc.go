// Package types defines the entity types, configuration, and standard errors
// for the Inkmill blogging store: the User identity, the BlogPost entity with
// its draft and partial-update forms, and the sentinel errors shared by the
// session store and the post repository.
package types
