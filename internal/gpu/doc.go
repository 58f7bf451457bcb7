// Package gpu describes GPU-resident resources for the scheduler: how each
// resource is read and written by the pipeline, which usage flags a recorder
// needs to allocate it, and which barriers a consumer needs after a producer.
//
// Nothing here records commands or talks to a driver. Classification is a
// case-insensitive substring match on a resource tag (for example
// "VertexBuffer" or "ShadowMap"); the first matching class wins. Images carry
// their current layout in an atomic so tasks running in parallel can observe
// and update it without locks.
package gpu
