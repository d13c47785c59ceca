package classfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// DefaultCacheSize is the number of parsed class files a Resolver keeps
const DefaultCacheSize = 512

// Source opens compiled classes by subject and slash-separated class path
// (e.g. "a/b/C" for class a.b.C)
type Source interface {
	Open(subject, classPath string) (io.ReadCloser, error)
}

// DirSource serves classes from <Root>/<subject>/classes/<classPath>.class
type DirSource struct {
	Root string
}

// NewDirSource creates a DirSource rooted at the subjects directory
func NewDirSource(root string) *DirSource {
	return &DirSource{Root: root}
}

// Path returns the file location of a class
func (s *DirSource) Path(subject, classPath string) string {
	return filepath.Join(s.Root, subject, "classes", filepath.FromSlash(classPath)+".class")
}

// Open opens the class file for reading
func (s *DirSource) Open(subject, classPath string) (io.ReadCloser, error) {
	return os.Open(s.Path(subject, classPath))
}

// SplitQualifiedName splits "<dotted.class.path>.<name><descriptor>" at the
// last dot into a slash-separated class path and the member signature.
// The descriptor itself never contains dots, only slashes.
func SplitQualifiedName(fqn string) (classPath, signature string, ok bool) {
	idx := strings.LastIndexByte(fqn, '.')
	if idx <= 0 || idx == len(fqn)-1 {
		return "", "", false
	}
	return strings.ReplaceAll(fqn[:idx], ".", "/"), fqn[idx+1:], true
}

// Resolver looks up the access modifiers of a method in its compiled class
type Resolver struct {
	source Source
	logger *zap.Logger
	cache  *lru.Cache[string, *Class]
}

// NewResolver creates a Resolver. Parsed classes are cached by subject and
// class path; a class that failed to open or parse is cached as nil.
func NewResolver(source Source, cacheSize int, logger *zap.Logger) (*Resolver, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, *Class](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create class cache: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{source: source, logger: logger, cache: cache}, nil
}

// Resolve returns the rendered access modifiers of the method named by fqn.
// The second result is false when the class cannot be read or declares no
// method with that name and descriptor.
func (r *Resolver) Resolve(subject, fqn string) (string, bool) {
	classPath, signature, ok := SplitQualifiedName(fqn)
	if !ok {
		r.logger.Debug("Qualified name has no class part", zap.String("fqn", fqn))
		return "", false
	}

	class := r.class(subject, classPath)
	if class == nil {
		return "", false
	}

	method, ok := class.FindMethod(signature)
	if !ok {
		r.logger.Debug("Method not declared in class",
			zap.String("subject", subject),
			zap.String("class", classPath),
			zap.String("signature", signature))
		return "", false
	}
	return Modifiers(method.Access), true
}

func (r *Resolver) class(subject, classPath string) *Class {
	key := subject + "\x00" + classPath
	if class, ok := r.cache.Get(key); ok {
		return class
	}

	class, err := r.load(subject, classPath)
	if err != nil {
		r.logger.Debug("Class unavailable",
			zap.String("subject", subject),
			zap.String("class", classPath),
			zap.Error(err))
	}
	r.cache.Add(key, class)
	return class
}

func (r *Resolver) load(subject, classPath string) (*Class, error) {
	rc, err := r.source.Open(subject, classPath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return Parse(rc)
}
