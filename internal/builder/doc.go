/*
Package builder turns a loaded config.Model into a dag.Graph.

Construction runs in two phases for each experiment, in model order:

 1. Parameter expansion: the explicit parameter sets, the rows of the
    product block and the draws of the sample block are concatenated, in that
    order. Sampling is seeded from Options.Seed and the experiment name, so a
    plan is reproducible and adding an experiment does not change the samples
    of another.

 2. Registration: a step descriptor is built from the experiment and added to
    the graph. A descriptor structurally equal to an earlier one is dropped
    with a warning; the first declaration wins.

The builder never sorts the graph. Cycle detection is left to the caller.
*/
package builder
