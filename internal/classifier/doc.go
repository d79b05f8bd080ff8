// Package classifier provides the risk classifiers that turn an encoded
// feature vector into a low/high heart-disease risk label. A classifier is
// either a logistic model read from a coefficient file or a remote model
// server reached over HTTP.
package classifier
