package git

import (
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	fserrors "github.com/GenerousLabs/expo-fs/errors"
)

// CreateTag creates an annotated tag at ref. The tagger is taken from the
// repository's user config.
func (r *Repository) CreateTag(name, ref, message string) error {
	if name == "" || ref == "" {
		return invalidf("tag name and reference are required")
	}
	if message == "" {
		return invalidf("annotated tags need a message")
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return wrapError(err, "resolve "+ref)
	}
	cfg, err := r.repo.Config()
	if err != nil {
		return wrapError(err, "read config")
	}

	refName := plumbing.NewTagReferenceName(name)
	if _, err := r.repo.Reference(refName, false); err == nil {
		return fserrors.New(fserrors.CodeExist, name)
	}

	tag := &object.Tag{
		Name: name,
		Tagger: object.Signature{
			Name:  cfg.User.Name,
			Email: cfg.User.Email,
			When:  time.Now(),
		},
		Message:    message,
		TargetType: plumbing.CommitObject,
		Target:     *hash,
	}
	obj := r.repo.Storer.NewEncodedObject()
	if err := tag.Encode(obj); err != nil {
		return wrapError(err, "encode tag")
	}
	tagHash, err := r.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return wrapError(err, "store tag")
	}

	return r.setNewRef(plumbing.NewHashReference(refName, tagHash))
}

// CreateLightweightTag points a tag reference straight at ref's commit.
func (r *Repository) CreateLightweightTag(name, ref string) error {
	if name == "" || ref == "" {
		return invalidf("tag name and reference are required")
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return wrapError(err, "resolve "+ref)
	}
	return r.setNewRef(plumbing.NewHashReference(plumbing.NewTagReferenceName(name), *hash))
}

// ListTags returns every tag. Annotated tags carry their message.
func (r *Repository) ListTags() ([]Tag, error) {
	refs, err := r.repo.Tags()
	if err != nil {
		return nil, wrapError(err, "list tags")
	}
	defer refs.Close()

	var tags []Tag
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		tag := Tag{Name: ref.Name().Short(), Hash: ref.Hash()}
		if obj, err := r.repo.TagObject(ref.Hash()); err == nil {
			tag.Message = obj.Message
		}
		tags = append(tags, tag)
		return nil
	})
	if err != nil {
		return nil, wrapError(err, "list tags")
	}
	return tags, nil
}

// DeleteTag removes a tag reference. The tag object of an annotated tag is
// left for garbage collection.
func (r *Repository) DeleteTag(name string) error {
	if name == "" {
		return invalidf("tag name is required")
	}

	refName := plumbing.NewTagReferenceName(name)
	if _, err := r.repo.Reference(refName, false); err != nil {
		return wrapError(err, "find tag "+name)
	}
	if err := r.repo.Storer.RemoveReference(refName); err != nil {
		return wrapError(err, "delete tag "+name)
	}
	return nil
}
